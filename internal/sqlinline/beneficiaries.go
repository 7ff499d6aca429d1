package sqlinline

const QInsertBeneficiary = `--sql 3dbb8b66-8cbc-4f71-8854-441d1fbb2040
insert into beneficiaries (project_id, name, contact_info, approved)
values ($1::bigint, $2::text, $3::text, $4::bool)
returning id;
`

const QSelectBeneficiaryByID = `--sql 94aaa179-a728-4d19-bf16-2ab8049e4eb4
select id, project_id, name, contact_info, approved
from beneficiaries
where id = $1::bigint
  and (not $2::bool or ($3::bool and approved))
limit 1;
`

const QListBeneficiaries = `--sql 6e05bc3c-1a87-4421-ace9-dc70ed8349bf
select id, project_id, name, contact_info, approved
from beneficiaries
where (not $1::bool or ($2::bool and approved))
  and ($3::bigint = 0 or project_id = $3::bigint)
order by id;
`

const QUpdateBeneficiary = `--sql 213d895d-003a-48b5-b710-e738536c6eec
update beneficiaries
set project_id = $2::bigint,
    name = $3::text,
    contact_info = $4::text,
    approved = $5::bool
where id = $1::bigint;
`

const QDeleteBeneficiary = `--sql 67b7fcc7-bd8c-45d4-b538-29a969671e6d
delete from beneficiaries where id = $1::bigint;
`

const QApproveBeneficiaries = `--sql 2297475c-43d0-4ec4-9b2f-c96a1a629c03
update beneficiaries set approved = true where id = any($1::bigint[]);
`
